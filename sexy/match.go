package sexy

import "fmt"

// Match compares actual against pattern. In a pattern, the symbol _ matches
// any single datum and a trailing ... matches the rest of a list, including
// nothing. On mismatch the error names the path to the first difference.
func Match(pattern, actual *Node) error {
	return match(pattern, actual, "root")
}

func match(pattern, actual *Node, path string) error {
	if pattern.Type == NodeSymbol && pattern.Text == "_" {
		return nil
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("at %s: expected %s %s, got %s %s", path, pattern.Type, pattern, actual.Type, actual)
	}
	if pattern.IsAtom() {
		if pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		return nil
	}

	for i, item := range pattern.Items {
		if item.Type == NodeEllipsis {
			if i != len(pattern.Items)-1 {
				return fmt.Errorf("at %s: '...' must be the last item of a list", path)
			}
			return nil
		}
		if i >= len(actual.Items) {
			return fmt.Errorf("at %s: missing item %d, expected %s", path, i, item)
		}
		if err := match(item, actual.Items[i], fmt.Sprintf("%s[%d]", path, i)); err != nil {
			return err
		}
	}
	if len(actual.Items) > len(pattern.Items) {
		return fmt.Errorf("at %s: unexpected extra item %s", path, actual.Items[len(pattern.Items)])
	}
	return nil
}
