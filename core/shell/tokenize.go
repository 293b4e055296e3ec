package shell

// initialArgvCap is the starting capacity of an argument vector.
const initialArgvCap = 8

// Argv is an argument vector, the command name is Argv[0].
type Argv []string

// Tokenize splits a line, with its newline already removed, into an argument
// vector. Tokens are maximal runs of characters other than space and tab.
//
// The second return value is false if the line holds no command: it is empty,
// a comment starting with '#', or made up only of separators.
func Tokenize(line string) (Argv, bool) {
	if line == "" || line[0] == '#' {
		return nil, false
	}

	argv := make(Argv, 0, initialArgvCap)
	start := -1
	for i := 0; i < len(line); i++ {
		if !isSeparator(line[i]) {
			if start < 0 {
				start = i
			}
			continue
		}

		if start >= 0 {
			argv = argv.push(line[start:i])
			start = -1
		}
	}
	if start >= 0 {
		argv = argv.push(line[start:])
	}

	if len(argv) == 0 {
		return nil, false
	}
	return argv, true
}

func isSeparator(c byte) bool {
	return c == ' ' || c == '\t'
}

// push appends a token, doubling the capacity whenever the vector would no
// longer have a free slot after it.
func (a Argv) push(token string) Argv {
	if len(a)+1 >= cap(a) {
		grown := make(Argv, len(a), 2*cap(a))
		copy(grown, a)
		a = grown
	}
	return append(a, token)
}
