// Package certificates inventories the certificates in a system keychain.
//
// The store is listed once with `security find-certificate -a -p -Z`, which
// prints every certificate as PEM preceded by its SHA-1 and SHA-256 digests.
// The dump is split into one record per certificate. Each record that carries
// a PEM block is piped through `openssl x509 -dates -subject -noout` to learn
// its subject and validity window.
//
// Six de-duplicated tables are produced, each in first-seen order:
//
//	certificates_sha1           SHA-1 digests
//	certificates_sha256         SHA-256 digests
//	certificates_subject        subjects
//	certificates_sha1_dates     "<sha1>,<not-before> to <not-after>"
//	certificates_sha256_dates   "<sha256>,<not-before> to <not-after>"
//	certificates_subject_dates  "<subject>,<not-before> to <not-after>"
//
// A validity window is recorded only when both bounds parse; the pair tables
// never hold half a window. All six keys are always present.
//
// Inspections may run concurrently (Config.Workers). Results are merged in
// record order, so the tables are identical to a sequential run.
package certificates
