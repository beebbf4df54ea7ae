// Package batch evaluates lists of Legendre and Hermite jobs.
//
// Job files are YAML, TOML or JSON:
//
//	jobs:
//	  - id: p10
//	    family: legendre
//	    n: 10
//	    x: "0.5"
//	    precision: 113
//	    rounding: RNDD
//
// Missing ids get a job ULID, missing precision the runner default and
// missing x_precision max(precision, 64). Jobs run on a bounded errgroup,
// either in process (Local) or against a server (Remote). The report keeps
// input order and is written as JSON, optionally gzip-compressed.
package batch
