package cli

// validateFlags centralizes cross-flag rules to keep behavior consistent.
func validateFlags(globals *Globals) error {
	if globals != nil && globals.Quiet && globals.Verbose {
		return outputErrorCommon(globals, "INVALID_FLAGS", "--quiet and --verbose cannot be combined", "drop one of them")
	}
	return nil
}
