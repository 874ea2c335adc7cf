package form

import (
	"github.com/unidoc/unipdf/v3/common/license"

	"github.com/reqscribe/requisition-api/pkg/errors"
)

// SetLicense registers the unipdf metered license key. The library refuses
// to write documents without one, so the key is required at startup rather
// than discovered on the first fill.
func SetLicense(key string) error {
	if key == "" {
		return errors.Processing("unidoc license key is not set", nil)
	}
	if err := license.SetMeteredKey(key); err != nil {
		return errors.Processing("failed to register unidoc license key", err)
	}
	return nil
}
