// Package skills holds the catalog of built-in dnaspec skills and formats
// them as slash commands for AI CLI tools.
//
// Every skill is invoked in an AI tool as
//
//	/speckit.dnaspec.<name> "<request>"
//
// Descriptions are looked up through internal/i18n, so the catalog prints
// in the active language. Tables are aligned by display width, which keeps
// Chinese descriptions in line.
package skills
