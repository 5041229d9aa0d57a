package testutil

import "github.com/roach88/xunit/internal/runner"

// SampleStack is the cleaned trace carried by the failing sample result.
const SampleStack = "arithmetic: expected 3 to equal 4\n" +
	"example.com/app.(*ArithmeticSuite).TestAddition(...)\n" +
	"\t/src/app/arithmetic_test.go:21 +0x55"

// SampleReports returns a fixed set of class reports covering every outcome,
// in class-name order as RunAll produces them.
func SampleReports() []runner.ClassReport {
	arith := runner.ClassReport{Class: "ArithmeticSuite", Results: []runner.Result{}}
	arith.Add(runner.Result{
		Class:      "ArithmeticSuite",
		Method:     "TestAddition",
		Outcome:    runner.OutcomeFail,
		Message:    "arithmetic: expected 3 to equal 4",
		StackTrace: SampleStack,
	})
	arith.Add(runner.Result{Class: "ArithmeticSuite", Method: "TestDivision", Outcome: runner.OutcomeIgnored})
	arith.Add(runner.Result{Class: "ArithmeticSuite", Method: "TestSubtraction", Outcome: runner.OutcomePass})

	broken := runner.ClassReport{Class: "BrokenSuite", Results: []runner.Result{}}
	broken.Add(runner.Result{
		Class:      "BrokenSuite",
		Method:     runner.ConstructorName,
		Outcome:    runner.OutcomeError,
		Message:    "no database",
		StackTrace: "no database",
	})

	strs := runner.ClassReport{Class: "StringSuite", Results: []runner.Result{}}
	strs.Add(runner.Result{Class: "StringSuite", Method: "TestConcat", Outcome: runner.OutcomePass})
	strs.Add(runner.Result{Class: "StringSuite", Method: "TestUpper", Outcome: runner.OutcomePass})

	return []runner.ClassReport{arith, broken, strs}
}
