// Package testutil provides test fixtures and an isolated command
// environment.
//
// # Fixtures
//
// Fixtures are embedded using go:embed:
//
//	fixtures/valid_dnaspec.toml
//	fixtures/invalid_dnaspec.toml
//	fixtures/package.json
//	fixtures/pip_show.txt
//
// Settings fixtures are loaded through config.Load so they are parsed the
// same way as a user's dnaspec.toml:
//
//	s, err := testutil.ValidSettings(t)
//	_, err = testutil.InvalidSettings(t)
//	pkg, err := testutil.PackageJSON(t)
//	data, err := testutil.LoadFixture("pip_show.txt")
//
// # Test Environment
//
// NewTestEnv builds temp work and home directories, default settings and
// a system.MockExecutor, and installs them as app.Default until the test
// ends:
//
//	func TestInstall(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    env.MakeProject(env.Paths.WorkDir)
//	    env.PythonOK()
//	    // run the command under test
//	}
package testutil
