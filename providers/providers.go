// Package providers registers every provider that needs no configuration with the default registry. Import it for
// its side effects.
package providers

import (
	_ "github.com/alanbriolat/clip-saver/providers/raw"
)
