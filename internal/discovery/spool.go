package discovery

import (
	"errors"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/mowens/crontabs/internal/crontab"
	"github.com/mowens/crontabs/internal/logger"
)

// OwnerFunc resolves the account name owning the file at path. It returns an
// error when the UID no longer maps to any account.
type OwnerFunc func(path string) (string, error)

// UserSpoolSource discovers per-user crontabs in a spool directory, yielding
// both owned and abandoned tabs.
//
// A spool entry whose on-disk owner matches the entry name is an ordinary
// per-user crontab. An entry whose owner differs, or whose UID cannot be
// resolved at all, is an abandoned crontab: it is opened by file path with no
// user identity so its jobs stay visible for cleanup.
type UserSpoolSource struct {
	eng   *crontab.Engine
	log   *logger.Logger
	Owner OwnerFunc
}

// NewUserSpoolSource returns a spool source using on-disk ownership lookup.
func NewUserSpoolSource(eng *crontab.Engine, log *logger.Logger) *UserSpoolSource {
	return &UserSpoolSource{eng: eng, log: log, Owner: fileOwner}
}

// Discover lists the spool directory. An unreadable or absent directory is an
// empty result, not an error: many systems refuse to list the spool to
// unprivileged users. When no usable entry is found the invoking user's
// personal crontab is returned instead, so the source always yields at least
// one handle.
func (s *UserSpoolSource) Discover(path string, _ *Aggregator) ([]*crontab.Tab, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		s.log.Warn("spool directory not listable",
			logger.Field{Key: "path", Value: path},
			logger.Field{Key: "error", Value: err})
	}

	var tabs []*crontab.Tab
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		username := entry.Name()
		full := filepath.Join(path, username)

		owner, oerr := s.Owner(full)
		if oerr != nil || owner != username {
			// Abandoned crontab pool entry.
			tab, ferr := s.eng.OpenFile(full, false)
			if ferr != nil {
				s.log.Warn("skipping unreadable spool entry",
					logger.Field{Key: "path", Value: full},
					logger.Field{Key: "error", Value: ferr})
				continue
			}
			s.log.Debug("abandoned crontab",
				logger.Field{Key: "path", Value: full},
				logger.Field{Key: "owner", Value: owner})
			tabs = append(tabs, tab)
			continue
		}

		tab, uerr := s.eng.OpenUser(username)
		if uerr != nil {
			s.log.Warn("skipping unreadable user crontab",
				logger.Field{Key: "user", Value: username},
				logger.Field{Key: "error", Value: uerr})
			continue
		}
		tabs = append(tabs, tab)
	}

	if len(tabs) == 0 {
		tabs = append(tabs, s.eng.OpenCurrentUser())
	}
	return tabs, nil
}

// fileOwner resolves the owning account name of path via stat. Discovery is
// Unix-only, so reading the UID out of Stat_t is safe here.
func fileOwner(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return "", errors.New("no ownership information available")
	}
	u, err := user.LookupId(strconv.FormatUint(uint64(st.Uid), 10))
	if err != nil {
		return "", err
	}
	return u.Username, nil
}
