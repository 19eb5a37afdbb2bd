package service

import (
	"crypto/rand"
	"log"
	"strconv"
	"time"

	"elena-license-engine/internal/model"
	"elena-license-engine/internal/store"
)

const keyCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// randomGroup returns n uppercase alphanumeric characters.
func randomGroup(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i := range buf {
		buf[i] = keyCharset[int(buf[i])%len(keyCharset)]
	}
	return string(buf)
}

// GetOrCreateMachineID returns the stable identity of this
// installation, provisioning one on first run. When the durable store
// is unreadable or unwritable it returns a degraded identity derived
// from the current time instead of failing; the fallback is not
// persisted and is allowed to differ between calls.
func GetOrCreateMachineID(kv store.KV) string {
	var id string
	found, err := kv.Get(model.RecordMachineID, &id)
	if err != nil {
		log.Printf("machine id: store unreadable, using fallback identity: %v", err)
		return fallbackMachineID()
	}
	if found && id != "" {
		return id
	}

	id = "ELENA-" + randomGroup(4) + "-" + randomGroup(4)
	if err := kv.Put(model.RecordMachineID, id); err != nil {
		log.Printf("machine id: store unwritable, using fallback identity: %v", err)
		return fallbackMachineID()
	}
	return id
}

func fallbackMachineID() string {
	return "ELENA-ERROR-" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
