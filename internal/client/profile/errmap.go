package profile

import (
	"sort"
	"strings"

	"github.com/parley-chat/parley/internal/client/api"
)

const messageSeparator = "; "

// confirmAliases are server field names that all mean the confirmation field.
var confirmAliases = map[string]struct{}{
	"password_confirmation": {},
	"passwordConfirmation":  {},
	"confirm_password":      {},
}

// editableFields maps server field names onto form fields. "image" is the
// legacy name some API versions use for the avatar.
var editableFields = map[string]Field{
	"username": FieldUsername,
	"email":    FieldEmail,
	"avatar":   FieldAvatar,
	"image":    FieldAvatar,
	"password": FieldPassword,
}

// mapServerErrors distributes a server validation response across the form's
// field-error slots. Each field's messages collapse to one string. Keys that
// match no editable field land in the general slot, prefixed with the key so
// the user can still tell what was rejected.
func mapServerErrors(verr *api.ValidationError) (fieldErrs map[Field]string, general string) {
	fieldErrs = make(map[Field]string)

	if len(verr.Fields) == 0 {
		return fieldErrs, msgUpdateFailed
	}

	var leftovers []string

	keys := make([]string, 0, len(verr.Fields))
	for k := range verr.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		joined := strings.Join(verr.Fields[key], messageSeparator)
		if _, ok := confirmAliases[key]; ok {
			fieldErrs[FieldPasswordConfirm] = joined
			continue
		}
		if field, ok := editableFields[key]; ok {
			fieldErrs[field] = joined
			continue
		}
		leftovers = append(leftovers, key+": "+joined)
	}

	return fieldErrs, strings.Join(leftovers, messageSeparator)
}
