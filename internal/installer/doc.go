// Package installer implements the dnaspec command pipelines.
//
// Every command is routed to one of three pipelines:
//
//	install   check python+git, resolve the workspace (in place, reused
//	          clone or fresh clone across mirrors), pip install -e . with
//	          fallbacks, run the target script, remove the temp dir
//	query     python -m <module> <cmd>, falling back to an inline shim;
//	          never clones or installs
//	dispatch  python <workdir>/<cli_script> <cmd> in an existing checkout
//
// Child processes get PYTHONIOENCODING=utf-8 and LANG=en_US.UTF-8, and a
// failing child's exit code becomes the wrapper's exit code through
// errors.ChildExit.
package installer
