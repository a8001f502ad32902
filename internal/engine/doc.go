// Package engine abstracts the container runtime installed on the host.
//
// Detection probes for supported runtimes in fixed priority order (docker,
// then podman) and selects the first one that answers a version query. When
// neither responds the detector falls back to an offline engine whose
// operations return harmless placeholder results, so the rest of the system
// stays usable for inspection. The fallback is explicit: the offline engine
// reports Offline() == true and detection surfaces ErrEngineNotFound so
// callers can log and display the degraded mode.
//
// Runtime differences are hidden behind the Engine interface. Notably,
// podman-compose has no restart verb, so the podman adapter degrades restart
// to stop, a short delay, then start.
package engine
