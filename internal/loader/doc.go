// Package loader reads a scenario file from disk.
//
// The format is chosen by file extension: .json, .yaml/.yml or .hcl. All
// three decode into the same scenario.Scenario; enum values are checked by
// the model's text unmarshalers. Cross-reference checks (unknown servers,
// dependency cycles) are left to dag.Build.
package loader
