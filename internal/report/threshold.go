package report

// DefaultKKM applies when a class level has no configured threshold.
const DefaultKKM = 75

// ResolveKKM finds the minimum passing score for a class name. The
// level is the leading numeric prefix ("7A" -> "7"); an unmapped or
// unparseable level falls back to DefaultKKM rather than failing.
func ResolveKKM(className string, kkmMap map[string]int) int {
	level := classLevel(className)
	if level == "" {
		return DefaultKKM
	}
	if kkm, ok := kkmMap[level]; ok && kkm > 0 {
		return kkm
	}
	return DefaultKKM
}

// IsPassing reports whether a final report score meets the threshold.
// Equal counts as passing.
func IsPassing(reportFinal, kkm int) bool {
	return reportFinal >= kkm
}

// ClassLevel returns the leading numeric prefix of a class name
// ("7A" -> "7"), or "" when there is none.
func ClassLevel(className string) string {
	return classLevel(className)
}

func classLevel(className string) string {
	end := 0
	for end < len(className) && className[end] >= '0' && className[end] <= '9' {
		end++
	}
	return className[:end]
}
