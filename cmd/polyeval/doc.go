// Command polyeval evaluates Legendre and Hermite polynomials with correct
// rounding from the command line.
//
// Usage:
//
//	polyeval legendre 10 0.3 --prec 113 --rnd RNDD
//	polyeval hermite 5 1e-3 --format hex --json
//	polyeval batch jobs.yaml --workers 8 --out results.json.gz --gzip
//	polyeval batch jobs.toml --remote http://localhost:8000
//	polyeval version
//
// Evaluator limits and defaults come from the EVAL_* environment variables
// shared with the server.
package main
