// Package instrument binds option economics to market data. An instrument
// lazily resolves a pricing model: an explicitly supplied model wins, then a
// previously bound model, then a model freshly built from the instrument's
// market inputs. Changing any market input invalidates the bound model.
package instrument

import (
	"fmt"
	"strings"
)

// MissingModelError reports that no pricing model could be resolved. Missing
// lists the absent market inputs by name.
type MissingModelError struct {
	Missing []string
}

func (e *MissingModelError) Error() string {
	return fmt.Sprintf("no pricing model resolvable: missing market inputs: %s", strings.Join(e.Missing, ", "))
}
