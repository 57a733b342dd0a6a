// Package group registers suites of tests from plain data.
//
// A suite is a list of named bodies. Entries named beforeAll, beforeEach,
// afterEach or afterAll are hooks. When any entry name starts with the only
// prefix ("--" by default) only those entries run:
//
//	func TestCart(t *testing.T) {
//		group.TestGroup(t, "cart", group.Tests{
//			{Name: "beforeEach", Body: func(t *testing.T) { cart.Reset() }},
//			{Name: "adds items", Body: testAdd},
//			{Name: "--removes items", Body: testRemove},
//		})
//	}
//
// The suite and test functions are looked up by name in a Registry, so the
// same data can run under describe/it, context/specify or skipped variants.
package group
