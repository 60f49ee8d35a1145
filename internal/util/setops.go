// Package util holds small generic helpers shared across the compiler
// packages that don't belong to any one domain concern.
package util

// DifferenceBy splits two collections into three parts, keyed by keyFn:
// items only in list1, items only in list2, and items present in both.
// The dialect merger uses the third return value to detect name/id
// collisions between dialects before committing to a merge.
func DifferenceBy[T any, R comparable](list1, list2 []T, keyFn func(item T) R) (onlyLeft, onlyRight, intersect []T) {
	seenLeft := map[R]struct{}{}
	seenRight := map[R]struct{}{}

	for _, elem := range list1 {
		seenLeft[keyFn(elem)] = struct{}{}
	}
	for _, elem := range list2 {
		seenRight[keyFn(elem)] = struct{}{}
	}

	for _, elem := range list1 {
		if _, ok := seenRight[keyFn(elem)]; !ok {
			onlyLeft = append(onlyLeft, elem)
		}
	}
	for _, elem := range list2 {
		key := keyFn(elem)
		if _, ok := seenLeft[key]; ok {
			intersect = append(intersect, elem)
		} else {
			onlyRight = append(onlyRight, elem)
		}
	}

	return onlyLeft, onlyRight, intersect
}
