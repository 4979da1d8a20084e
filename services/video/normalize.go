package video

import "strings"

// ExtractVideoURL finds the media URL in a decoded provider response. It looks at
// video.url, video (string), url, output (string or first element), the first
// element of a top-level array, and finally a bare string.
func ExtractVideoURL(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []interface{}:
		if len(t) == 0 {
			return ""
		}
		return ExtractVideoURL(t[0])
	case map[string]interface{}:
		switch video := t["video"].(type) {
		case map[string]interface{}:
			if u, ok := video["url"].(string); ok && strings.TrimSpace(u) != "" {
				return strings.TrimSpace(u)
			}
		case string:
			if strings.TrimSpace(video) != "" {
				return strings.TrimSpace(video)
			}
		}
		if u, ok := t["url"].(string); ok && strings.TrimSpace(u) != "" {
			return strings.TrimSpace(u)
		}
		if out, ok := t["output"]; ok {
			return ExtractVideoURL(out)
		}
	}
	return ""
}
