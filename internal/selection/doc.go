// Package selection implements the pointer-driven region selection state machine.
//
// The controller is independent of any windowing toolkit. A presentation layer feeds it
// abstract pointer events and reads back either a committed rectangle or a cancellation:
//
//	Idle --primary down--> Selecting --primary up, w>0 && h>0--> Committed
//	                           |
//	                           +--primary up with zero area / cancel--> Cancelled
//
// Committed and Cancelled are terminal. Cancelled selections are silent: callers must
// not start a capture and should not surface an error to the user.
package selection
