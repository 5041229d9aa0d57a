package runner

// Version is the engine version recorded with stored runs.
const Version = "0.1.0"
