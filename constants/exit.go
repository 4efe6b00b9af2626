package constants

// Process exit codes of the ldg CLI.
const (
	ExitOK           = 0 // no mismatches
	ExitMismatches   = 1 // validation finished with mismatches
	ExitInputMissing = 2 // required input file or directory missing
	ExitUnexpected   = 3 // anything else
	ExitCloudConfig  = 4 // project/location/processor not configured
	ExitCloudClient  = 5 // Document AI client could not be created
)
