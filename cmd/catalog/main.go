// Command catalog inspects, validates and converts materials catalog shards.
//
//	catalog ids
//	catalog get M-SS-073 -o yaml
//	catalog validate --file shards/m_stainless_051_100.jsonc
//	catalog convert stainless.cbor.zst
//	catalog digest
package main

import (
	"os"

	applog "machcat/internal/log"
)

func main() {
	applog.SetOutput(os.Stderr)
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
