// Package mongo creates MongoDB clients with the official v2 driver, verifying
// connectivity with retries so services survive slow cold starts of managed
// clusters.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "visits")
//	if err != nil {
//		return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
// # Configuration
//
//	MONGODB_URL                 (required)
//	MONGODB_CONNECT_TIMEOUT     (default: 10s)
//	MONGODB_MAX_POOL_SIZE       (default: 100)
//	MONGODB_MIN_POOL_SIZE       (default: 1)
//	MONGODB_MAX_CONN_IDLE_TIME  (default: 300s)
//	MONGODB_RETRY_WRITES        (default: true)
//	MONGODB_RETRY_READS         (default: true)
//	MONGODB_RETRY_ATTEMPTS      (default: 3)
//	MONGODB_RETRY_INTERVAL      (default: 5s)
//
// Healthcheck returns a ping function for readiness probes. Connection failures
// wrap ErrFailedToConnectToMongo.
package mongo
