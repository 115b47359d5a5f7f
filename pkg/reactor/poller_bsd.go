//go:build darwin || freebsd || netbsd || openbsd

package reactor

import "golang.org/x/sys/unix"

type kqueuePoller struct {
	kq     int
	events []unix.Kevent_t
}

// NewPoller returns the kqueue-backed poller.
func NewPoller() (Poller, error) {
	kq, err := unix.Kqueue()
	if err != nil {
		return nil, err
	}
	return &kqueuePoller{
		kq:     kq,
		events: make([]unix.Kevent_t, 256),
	}, nil
}

// apply installs or removes the read/write filters to match interest.
// kqueue keys filters independently, so a change touches both.
func (p *kqueuePoller) apply(fd int, interest Interest, adding bool) error {
	changes := make([]unix.Kevent_t, 0, 2)

	readFlags := uint16(unix.EV_DELETE)
	if interest&InterestRead != 0 {
		readFlags = unix.EV_ADD
	}
	writeFlags := uint16(unix.EV_DELETE)
	if interest&InterestWrite != 0 {
		writeFlags = unix.EV_ADD
	}

	// Deleting a filter that was never added returns ENOENT; skip the
	// delete on the initial registration.
	if readFlags == unix.EV_ADD || !adding {
		changes = append(changes, unix.Kevent_t{
			Ident: uint64(fd), Filter: unix.EVFILT_READ, Flags: readFlags,
		})
	}
	if writeFlags == unix.EV_ADD || !adding {
		changes = append(changes, unix.Kevent_t{
			Ident: uint64(fd), Filter: unix.EVFILT_WRITE, Flags: writeFlags,
		})
	}

	for _, ch := range changes {
		if _, err := unix.Kevent(p.kq, []unix.Kevent_t{ch}, nil, nil); err != nil {
			if ch.Flags == unix.EV_DELETE && err == unix.ENOENT {
				continue
			}
			return err
		}
	}
	return nil
}

func (p *kqueuePoller) Register(fd int, interest Interest) error {
	return p.apply(fd, interest, true)
}

func (p *kqueuePoller) Modify(fd int, interest Interest) error {
	return p.apply(fd, interest, false)
}

func (p *kqueuePoller) Deregister(fd int) error {
	return p.apply(fd, 0, false)
}

func (p *kqueuePoller) Poll(events []Event, timeoutMS int) (int, error) {
	if len(events) > len(p.events) {
		p.events = make([]unix.Kevent_t, len(events))
	}
	ts := unix.NsecToTimespec(int64(timeoutMS) * 1e6)
	n, err := unix.Kevent(p.kq, nil, p.events[:len(events)], &ts)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	for i := 0; i < n; i++ {
		raw := p.events[i]
		events[i] = Event{
			FD:       int(raw.Ident),
			Readable: raw.Filter == unix.EVFILT_READ,
			Writable: raw.Filter == unix.EVFILT_WRITE,
			Err:      raw.Flags&unix.EV_ERROR != 0,
			Hangup:   raw.Flags&unix.EV_EOF != 0,
		}
	}
	return n, nil
}

func (p *kqueuePoller) Close() error {
	return unix.Close(p.kq)
}
