// Package testdb provides helpers for PostgreSQL integration tests.
//
// Tests run inside a transaction that is rolled back when the test ends, so
// they can run in parallel against one database without cleanup:
//
//	func TestMyFeature(t *testing.T) {
//	    t.Parallel()
//	    if testdb.ShouldSkipDatabaseTest() {
//	        t.Skip("TASKTAG_TEST_DATABASE_URL not set - skipping integration test")
//	    }
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        taskStore := postgres.NewPostgresTaskStore(tx, nil)
//	        // ...
//	    })
//	}
//
// The connection string comes from TASKTAG_TEST_DATABASE_URL, falling back
// to DATABASE_URL.
package testdb
