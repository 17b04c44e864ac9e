package encoder

// YesNo maps a checkbox or radio value to the Yes/No keys CLM expects.
// Only true, "true", "on", "YES" and "yes" count as Yes.
func YesNo(value any) string {
	switch typed := value.(type) {
	case bool:
		if typed {
			return "Yes"
		}
	case string:
		switch typed {
		case "true", "on", "YES", "yes":
			return "Yes"
		}
	}
	return "No"
}
