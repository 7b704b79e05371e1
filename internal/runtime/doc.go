// Package runtime assembles what a gitmenu command runs against: the
// repository, the effective configuration, the process engine and the
// session built from them.
package runtime
