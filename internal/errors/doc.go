// Package errors provides structured error handling for combat-tracker.
//
// Every failure surfaced by the engine core carries a Code so callers can
// distinguish the three failure families without string matching:
//
//   - NotFound: the operation target (participant, initiative entry,
//     encounter) does not exist
//   - InvalidArgument: malformed input such as negative damage
//   - FailedPrecondition: the operation was attempted in the wrong state,
//     e.g. advancing the turn while combat is inactive
//
// None of these are fatal; every failure is recoverable by the caller
// retrying with corrected input or state. The transport layer maps codes to
// gRPC status codes via ToGRPCError.
//
// Usage:
//
//	if amount < 0 {
//		return errors.InvalidArgumentf("damage amount must be non-negative, got %d", amount)
//	}
//
//	if errors.IsFailedPrecondition(err) {
//		// combat was not active; tell the user to start it first
//	}
package errors
