// Package condition defines the data model shared by every condition module.
//
// A condition is a single named fact about the host, such as whether SSH is
// enabled or which certificates are present in the system keychain. Each
// module run produces a Set: a flat mapping from a stable, module-namespaced
// key to a Value. A Value is one of three shapes:
//
//   - a string scalar (Str)
//   - a boolean scalar (Bool)
//   - an ordered sequence of strings (Strings)
//
// Sequences are usually assembled with a Sequence, which drops exact
// duplicates while keeping first-seen order:
//
//	seq := condition.NewSequence()
//	seq.Add("AB12")
//	seq.Add("AB12") // ignored
//	set := condition.NewBuilder().
//	    SetStrings("certificates_sha1", seq.Values()).
//	    Build()
//
// At the sink boundary a Set is flattened with Raw into plain Go values that
// every encoder (plist, JSON, YAML) understands.
package condition
