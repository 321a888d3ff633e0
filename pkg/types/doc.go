// Package types defines the shared interfaces and data types used across
// rulesync: the filesystem abstraction, the adapter capability descriptor,
// and the request/result types of the sync engine.
package types
