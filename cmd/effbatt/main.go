// Package main provides the entry point for the effbatt CLI.
//
// effbatt records battery efficiency verifications of rolling stock: the
// operator and instrument pair, sites and their vehicles, the measurements
// taken on each vehicle and the generated reports.
//
// Usage:
//
//	effbatt site add C3010R --odl 100012345678
//	effbatt vehicle add --site 1 50832187605-6 --type 3M6M
//	effbatt record set --site 1 --vehicle 1 b1Data=03/2022 esito=POSITIVO
//	effbatt generate --site 1 --vehicle 1
//
// See --help for all available options.
package main

func main() {
	Execute()
}
