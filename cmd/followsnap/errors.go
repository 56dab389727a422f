package main

import (
	errs "followsnap/pkg/errors"
)

// errorHeadline picks the message printed above a failure
func errorHeadline(err error) string {
	switch errs.TypeOf(err) {
	case errs.ErrorTypeConfig:
		return "Invalid input"
	case errs.ErrorTypeSustainedFailure:
		return "Collection aborted"
	case errs.ErrorTypeCanceled:
		return "Interrupted"
	case errs.ErrorTypePersistence:
		return "Could not write output"
	default:
		return "Failed"
	}
}
