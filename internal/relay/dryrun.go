package relay

import (
	"context"
	"sort"
	"strings"
)

// DryRun accepts every message without sending it. Only the template id and parameter
// names are reported to Log, never the values.
type DryRun struct {
	Log func(format string, v ...interface{})
}

// Send reports the call and succeeds.
func (d DryRun) Send(ctx context.Context, creds Credentials, params TemplateParams) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.Log != nil {
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		d.Log("Dry run: template %q with params [%s] not sent", creds.TemplateID, strings.Join(keys, ", "))
	}
	return nil
}
