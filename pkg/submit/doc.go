// Package submit delivers a form record to the remote API and tracks the
// outcome. HTTPClient posts {"collection": id, "data": [record]} as JSON and
// classifies the answer; Coordinator turns each attempt into a Status and
// guards the status against stale responses with per-attempt sequence
// numbers. No retries are attempted: every failure is final for its attempt.
package submit
