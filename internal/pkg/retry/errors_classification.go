package retry

import (
	"errors"
	"net"
	"os"
	"syscall"
)

// IsTimeout проверяет, является ли ошибка таймаутом
func IsTimeout(err error) bool {
	if os.IsTimeout(err) {
		return true
	}

	// Проверяем сетевые таймауты
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	// Проверяем системные таймауты
	var sysErr syscall.Errno
	if errors.As(err, &sysErr) {
		return sysErr == syscall.ETIMEDOUT
	}

	return false
}

// IsConnectionError проверяет, является ли ошибка проблемой соединения
func IsConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	// Проверяем системные ошибки соединения
	var sysErr syscall.Errno
	if errors.As(err, &sysErr) {
		switch sysErr {
		case syscall.ECONNREFUSED,
			syscall.ECONNRESET,
			syscall.ECONNABORTED,
			syscall.ENETUNREACH,
			syscall.ENETDOWN:
			return true
		}
	}

	return false
}

// IsTransientError проверяет, является ли ошибка временной
func IsTransientError(err error) bool {
	return IsTimeout(err) || IsConnectionError(err)
}
