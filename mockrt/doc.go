// Package mockrt is the runtime generated mocks are written against.
//
// A generated mock embeds Mock, which carries the call history and the
// default-fallback flag. Every method slot is a nil-able function field;
// the override records the call and then either invokes the field or
// falls back through Unmocked:
//
//	type MyMock struct {
//		mockrt.Mock
//		MockAdd func(operand1, operand2 int) int
//	}
//
//	func (m *MyMock) Add(operand1, operand2 int) int {
//		m.Record("Add", operand1, operand2)
//		if m.MockAdd != nil {
//			return m.MockAdd(operand1, operand2)
//		}
//
//		return mockrt.Unmocked[int](&m.Mock, "MockAdd")
//	}
//
// Mocks are not safe for concurrent use.
package mockrt
