package cli

import "adminconsole/internal/console/form"

// submitEdit drives one update through an edit session: the freshly
// fetched record becomes the original, change stages the draft, and save
// runs under the session's lifecycle guards. When the draft matches the
// original the save is skipped entirely and no write goes out; when the
// save fails the session stays in Editing with the draft intact, so the
// caller can report the error without losing the staged values.
func submitEdit[T any](current T, change func(*T), save func(T) (T, error)) (*form.EditSession[T], bool, error) {
	sess := form.NewEditSession(current)
	if err := sess.Begin(); err != nil {
		return sess, false, err
	}
	draft := sess.Value()
	change(&draft)
	if err := sess.Apply(draft); err != nil {
		return sess, false, err
	}
	if !sess.Dirty() {
		if err := sess.Cancel(); err != nil {
			return sess, false, err
		}
		return sess, false, nil
	}
	if err := sess.Submit(save); err != nil {
		return sess, true, err
	}
	return sess, true, nil
}
