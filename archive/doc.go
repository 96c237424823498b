// Package archive ships completed result sets off scratch storage.
//
// A result set is the document written by the time series writer plus the
// heavy-data files next to it. The package discovers a set from its
// document path, packs it into a tar bundle through a selectable
// compression codec, and publishes bundles to a Sink (local directory, S3,
// MinIO) under concurrency and bandwidth limits.
//
// # Usage
//
//	set, err := archive.ResultSet("out/sim.xdmf2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	pub := archive.NewPublisher(archive.NewLocalSink("/mnt/results"),
//	    archive.WithCodec(archive.CodecZstd),
//	    archive.WithController(archive.NewController(archive.Config{
//	        MaxConcurrentUploads: 4,
//	        UploadBytesPerSec:    64 << 20,
//	    })),
//	)
//
//	err = pub.Publish(ctx, set)
package archive
