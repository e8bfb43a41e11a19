package field

import (
	"reflect"

	"github.com/goliatone/go-formstate/pkg/model"
)

// CloneValue deep-copies the container shapes field values take so baselines
// and snapshots never alias the live value.
func CloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = CloneValue(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = CloneValue(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	case *model.Date:
		if typed == nil {
			return typed
		}
		d := *typed
		return &d
	default:
		return typed
	}
}

// Equal is the comparison dirty tracking uses.
func Equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

func cloneOptions(options []model.Option) []model.Option {
	if len(options) == 0 {
		return nil
	}
	return append([]model.Option(nil), options...)
}
