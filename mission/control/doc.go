// Package control runs a parsed mission to completion.
//
// Run builds one Plateau, then places and drives each rover in input order.
// Rover i finishes its whole instruction sequence before rover i+1 is
// constructed, so the shared Plateau only ever has one mutator.
//
// Failure handling is chosen with a Policy:
//   - PolicyAbort stops the whole run on the first placement or move error
//     and returns a *RoverError. No partial report is produced.
//   - PolicyHaltRover records the failure, leaves that rover where it is (or
//     unplaced) and carries on with the next rover.
//
// Usage:
//
//	mission, err := input.ParseString(text)
//	if err != nil {
//		return err
//	}
//	report, err := control.Run(mission, control.WithPolicy(control.PolicyAbort))
//	if err != nil {
//		return err
//	}
//	for _, line := range report.Lines() {
//		fmt.Println(line)
//	}
package control
