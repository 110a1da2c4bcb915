// AngelaMos | 2026
// store.go

package avatar

import (
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/traffic-registry/internal/config"
	"github.com/carterperez-dev/traffic-registry/internal/core"
)

var dataURLPattern = regexp.MustCompile(`^data:image/(png|jpeg|jpg);base64,(.+)$`)

// Store writes avatar images under the uploads directory, which the server
// exposes at PublicPrefix.
type Store struct {
	dir    string
	prefix string
	now    func() time.Time
}

func NewStore(cfg config.UploadsConfig) *Store {
	return &Store{
		dir:    cfg.Dir,
		prefix: strings.TrimRight(cfg.PublicPrefix, "/"),
		now:    time.Now,
	}
}

// SaveDataURL decodes a base64 PNG or JPEG data-URL into a file and returns
// its public URL. Anything that is not an image data-URL is returned as is,
// so an already stored URL survives a profile resave.
func (s *Store) SaveDataURL(userID int64, value string) (string, error) {
	if !strings.HasPrefix(value, "data:image/") {
		return value, nil
	}

	match := dataURLPattern.FindStringSubmatch(value)
	if match == nil {
		return "", unsavable()
	}

	ext := match[1]
	if ext == "jpeg" {
		ext = "jpg"
	}

	data, err := base64.StdEncoding.DecodeString(match[2])
	if err != nil || len(data) == 0 {
		return "", unsavable()
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	name := fmt.Sprintf("avatar_%d_%d_%s.%s",
		userID,
		s.now().UnixMilli(),
		uuid.New().String()[:8],
		ext,
	)

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}

	return path.Join(s.prefix, name), nil
}

func unsavable() error {
	return core.WithField(
		core.Reason(core.ErrInvalidInput, "could not save image"),
		"avatar",
	)
}
