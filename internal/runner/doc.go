// Package runner is the test execution engine.
//
// A test class is a Go struct type whose exported, parameterless methods
// (returning nothing or a single error) are test methods. Classes are
// described with Define, registered in a Registry, and executed by a Runner.
//
//	type CartSuite struct{ cart *Cart }
//
//	func (s *CartSuite) Before()        { s.cart = NewCart() }
//	func (s *CartSuite) TestEmpty()     { check.Equal(s.cart.Len(), 0, "new cart is empty") }
//	func (s *CartSuite) TestAdd() error { return s.cart.Add("widget") }
//
//	reg := runner.NewRegistry()
//	reg.Register(runner.Define[CartSuite]("CartSuite", nil).Ignore("TestAdd"))
//	reports := runner.New(reg).RunAll()
//
// # Lifecycle
//
// Every test method gets a fresh instance from the class factory. Before runs
// first, then the method, then After. The first failing step decides the
// outcome:
//
//   - factory raised: error (reported against the "constructor" method)
//   - Before raised: error; neither the method nor After runs
//   - method raised: fail; After still runs
//   - After raised: error
//
// "Raised" means a panic or a non-nil returned error. Within one class, the
// run stops after the first error outcome; fail outcomes do not stop it.
//
// Nothing raised by a test escapes RunAll, RunClass, RunMethod or RunOne.
package runner
