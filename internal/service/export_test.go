package service

import "github.com/prometheus/client_golang/prometheus"

var AttachmentWriteFailures prometheus.Counter = attachmentWriteFailures

func (s *AttachmentService) SetIDGenerator(newID func() string) {
	s.newID = newID
}
