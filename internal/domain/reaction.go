package domain

// ReactionKind is either a like or a dislike.
type ReactionKind string

// Reaction kinds.
const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Valid reports whether k is a known kind.
func (k ReactionKind) Valid() bool {
	return k == ReactionLike || k == ReactionDislike
}

// ParseReactionKind converts a path segment into a ReactionKind.
func ParseReactionKind(s string) (ReactionKind, error) {
	k := ReactionKind(s)
	if !k.Valid() {
		return "", NewValidationErrorWithValue("kind", "must be like or dislike", s)
	}

	return k, nil
}

// ReactionResult carries fresh counts after a reaction attempt.
// AlreadyVoted is set when the user had reacted before; nothing changed then.
type ReactionResult struct {
	Likes        int
	Dislikes     int
	AlreadyVoted bool
}
