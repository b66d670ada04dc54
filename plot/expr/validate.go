package expr

// Validate reports whether normalized text is a well-formed expression.
//
// Each rule is a separate pass. The double-operator and missing-operator scans
// interact (for example on "5--x"), so they are kept apart rather than merged.
func Validate(s string) bool {
	if s == "" {
		return false
	}
	return allowedChars(s) &&
		!bareOperator(s) &&
		s[0] != '+' &&
		powerHasOperand(s) &&
		balanced(s) &&
		noDoubleOperators(s) &&
		noMissingOperator(s)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/':
		return true
	}
	return false
}

// endsOperand: digit, x or ')'.
func endsOperand(c byte) bool { return isDigit(c) || c == 'x' || c == ')' }

// startsOperand: digit, x or '('.
func startsOperand(c byte) bool { return isDigit(c) || c == 'x' || c == '(' }

func allowedChars(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '*' && i+1 < len(s) && s[i+1] == '*' {
			i++
			continue
		}
		c := s[i]
		if isDigit(c) || c == '.' || c == 'x' || c == '(' || c == ')' || isOperator(c) {
			continue
		}
		return false
	}
	return true
}

func bareOperator(s string) bool {
	return len(s) == 1 && isOperator(s[0])
}

// powerHasOperand checks every adjacent "**" pair, overlapping ones included.
func powerHasOperand(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i] != '*' || s[i+1] != '*' {
			continue
		}
		if i == 0 || !endsOperand(s[i-1]) {
			return false
		}
	}
	return true
}

func balanced(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth == 0
}

func noDoubleOperators(s string) bool {
	i := 0
	for i+1 < len(s) {
		cur, next := s[i], s[i+1]
		if !isOperator(cur) || !isOperator(next) {
			i++
			continue
		}
		if cur == '*' && next == '*' {
			i += 2
			continue
		}
		if cur == '-' && next == '-' {
			if i == 0 || isOperator(s[i-1]) || s[i-1] == '(' {
				i++
				continue
			}
		}
		return false
	}
	return true
}

func noMissingOperator(s string) bool {
	for i := 0; i+1 < len(s); i++ {
		cur, next := s[i], s[i+1]
		if endsOperand(cur) && startsOperand(next) && !(isDigit(cur) && isDigit(next)) {
			return false
		}
	}
	return true
}
