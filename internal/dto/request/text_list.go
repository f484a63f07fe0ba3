package request

import (
	"encoding/json"
	"fmt"

	"tour-booking/pkg/utils"
)

// TextList accepts either a JSON array of strings or a single string with
// one item per line (or comma separated) and normalizes it to a trimmed list
// without empty items.
type TextList []string

func (l *TextList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*l = TextList{}
	case string:
		*l = utils.NormalizeList(v)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("list items must be strings")
			}
			items = append(items, s)
		}
		*l = utils.NormalizeStrings(items)
	default:
		return fmt.Errorf("expected a string or a list of strings")
	}
	return nil
}
