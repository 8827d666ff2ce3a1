package validation

// Strength describes how strong a candidate password is. Deterministic and
// side-effect free, so it is safe to evaluate on every keystroke.
type Strength struct {
	Score   int    `json:"score"`
	Label   string `json:"label"`
	Hint    string `json:"hint"`
	Percent int    `json:"percent"`
}

var strengthLabels = [5]string{"Very weak", "Weak", "Fair", "Good", "Strong"}

var strengthHints = [5]string{
	"Use at least 8 characters",
	"Add more characters and mix in other character types",
	"Add uppercase letters, digits or symbols",
	"A longer password would be stronger",
	"Great password",
}

// Score rates a password from 0 to 4. Length contributes up to two points
// (8 and 12 characters), character variety up to two more (two and three of
// lowercase/uppercase/digit/symbol). Passwords shorter than 8 characters
// never score above 1 no matter how varied they are.
func Score(password string) Strength {
	if password == "" {
		return Strength{Score: 0, Label: "Too short", Hint: "Type a password", Percent: 0}
	}

	score := 0
	if len(password) >= 8 {
		score++
	}
	if len(password) >= 12 {
		score++
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	variety := 0
	for _, has := range []bool{hasLower, hasUpper, hasDigit, hasSymbol} {
		if has {
			variety++
		}
	}
	if variety >= 2 {
		score++
	}
	if variety >= 3 {
		score++
	}

	if score > 4 {
		score = 4
	}
	if len(password) < 8 && score > 1 {
		score = 1
	}

	return Strength{
		Score:   score,
		Label:   strengthLabels[score],
		Hint:    strengthHints[score],
		Percent: score * 25,
	}
}
