// Package reload restarts a command whenever files below a directory change.
//
// A Watcher turns bursts of file events into single notifications, and a Runner
// owns the child process:
//
//	w, err := reload.NewWatcher(".")
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//
//	r := reload.NewRunner("go", []string{"run", "."})
//	if err := r.Start(); err != nil {
//		return err
//	}
//	defer r.Stop()
//
//	return w.Run(ctx, func() {
//		if err := r.Restart(); err != nil {
//			log.Println(err)
//		}
//	})
//
// On unix the child runs in its own process group. Restart sends SIGINT to the
// whole group and falls back to SIGKILL after the stop timeout.
package reload
