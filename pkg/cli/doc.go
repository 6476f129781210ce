// Package cli implements the command-line interface for hostcond.
//
// # Overview
//
// hostcond gathers facts about the host (certificates, user accounts,
// privacy overrides, interpreters, system settings and systemd units) and
// merges them into the conditions file read by the deployment policy
// engine. It is normally run as root from the policy engine's
// pre-flight hook.
//
// # Commands
//
// Root command - run condition modules:
//
//	hostcond [--certificates] [--user-accounts] [--module NAME]... [--dest DEST] [--format FORMAT]
//
// Module flags and --module values select exactly the named modules.
// Without them the preferences file decides, and without a preferences
// file every module runs. Unknown module names are logged and skipped.
//
// modules - list available modules:
//
//	hostcond modules
//
// # Destinations
//
//	/path/file.plist         XML property list (default format)
//	/path/file.json|.yaml    JSON or YAML document
//	-                        stdout, one document per module (yaml, json, table)
//	cm://namespace/name      Kubernetes ConfigMap, key conditions.yaml
//
// File and ConfigMap destinations are merged: keys written by a module
// replace keys of the same name, everything else is kept. --purge removes
// the conditions file first.
//
// # Environment Variables
//
//	LOG_LEVEL              Logging verbosity when --log-level is not set
//	HOSTCOND_DEST          Same as --dest
//	HOSTCOND_FORMAT        Same as --format
//	HOSTCOND_PREFS         Same as --prefs
//	HOSTCOND_TOOL_TIMEOUT  Same as --tool-timeout
//	HOSTCOND_WORKERS       Same as --workers
//	HOSTCOND_METRICS_FILE  Same as --metrics-file
//	HOSTCOND_KUBECONFIG    Same as --kubeconfig
//
// # Exit Codes
//
//	0  Success, including runs where modules or the sink failed
//	1  Not running as root, or invalid arguments
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/hostcond/pkg/cli.version=1.0.0'"
package cli
