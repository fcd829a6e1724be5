package filter

import (
	"encoding/json"
	"errors"

	"github.com/taskdeck/taskdeck/internal/storage"
	"go.uber.org/zap"
)

// Load reads the persisted filter from the scoped store. A missing or
// corrupt entry is never fatal: the default filter is returned and the
// problem logged at warn level.
func Load(kv storage.KV, key string, def Filter, log *zap.Logger) Filter {
	raw, err := kv.GetItem(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Warn("filter_load_failed", zap.String("key", key), zap.Error(err))
		}
		return def
	}

	var f Filter
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		log.Warn("filter_corrupt_discarded", zap.String("key", key), zap.Error(err))
		return def
	}
	return f
}

// Save writes the filter to the scoped store. Persistence is best-effort:
// failures (quota, unavailable storage) are swallowed after a warn log.
func Save(kv storage.KV, key string, f Filter, log *zap.Logger) {
	data, err := json.Marshal(f)
	if err != nil {
		log.Warn("filter_encode_failed", zap.Error(err))
		return
	}
	if err := kv.SetItem(key, string(data)); err != nil {
		log.Warn("filter_save_failed", zap.String("key", key), zap.Error(err))
	}
}
