package export

import (
	"fmt"
	"strings"
)

// CSV renders flat records as a header row plus comma-joined value rows.
// Values containing commas are wrapped in quotes. Embedded quotes and
// newlines are NOT escaped; that limitation is inherited from the format
// existing exports were produced in and is kept for compatibility.
func CSV(headers []string, rows [][]any) []byte {
	if len(rows) == 0 && len(headers) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(strings.Join(headers, ","))
	for _, row := range rows {
		sb.WriteByte('\n')
		for i, v := range row {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(csvField(v))
		}
	}
	return []byte(sb.String())
}

func csvField(v any) string {
	s := fmt.Sprint(v)
	if strings.Contains(s, ",") {
		return `"` + s + `"`
	}
	return s
}
