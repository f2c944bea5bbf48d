// Package server wraps net/http.Server with graceful shutdown, functional
// options, and environment-based configuration, including optional TLS from
// certificate files.
//
//	s, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
//	if err != nil {
//		log.Error("failed to create server", logger.Error(err))
//		os.Exit(1)
//	}
//	eg.Go(s.Run(ctx, r))
package server
