//go:build linux

package reactor

import "golang.org/x/sys/unix"

type epollPoller struct {
	epfd   int
	events []unix.EpollEvent
}

// NewPoller returns the epoll-backed poller.
func NewPoller() (Poller, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &epollPoller{
		epfd:   epfd,
		events: make([]unix.EpollEvent, 256),
	}, nil
}

func epollMask(interest Interest) uint32 {
	var mask uint32 = unix.EPOLLRDHUP
	if interest&InterestRead != 0 {
		mask |= unix.EPOLLIN
	}
	if interest&InterestWrite != 0 {
		mask |= unix.EPOLLOUT
	}
	return mask
}

func (p *epollPoller) Register(fd int, interest Interest) error {
	ev := unix.EpollEvent{Events: epollMask(interest), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

func (p *epollPoller) Modify(fd int, interest Interest) error {
	ev := unix.EpollEvent{Events: epollMask(interest), Fd: int32(fd)}
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_MOD, fd, &ev)
}

func (p *epollPoller) Deregister(fd int) error {
	return unix.EpollCtl(p.epfd, unix.EPOLL_CTL_DEL, fd, nil)
}

func (p *epollPoller) Poll(events []Event, timeoutMS int) (int, error) {
	if len(events) > len(p.events) {
		p.events = make([]unix.EpollEvent, len(events))
	}
	n, err := unix.EpollWait(p.epfd, p.events[:len(events)], timeoutMS)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	for i := 0; i < n; i++ {
		raw := p.events[i]
		events[i] = Event{
			FD:       int(raw.Fd),
			Readable: raw.Events&unix.EPOLLIN != 0,
			Writable: raw.Events&unix.EPOLLOUT != 0,
			Err:      raw.Events&unix.EPOLLERR != 0,
			Hangup:   raw.Events&(unix.EPOLLHUP|unix.EPOLLRDHUP) != 0,
		}
	}
	return n, nil
}

func (p *epollPoller) Close() error {
	return unix.Close(p.epfd)
}
