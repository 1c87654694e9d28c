package forking

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	goversion "github.com/hashicorp/go-version"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"

	"github.com/starkfoundry/sn-exec-go/common"
	"github.com/starkfoundry/sn-exec-go/config"
	"github.com/starkfoundry/sn-exec-go/process"
	"github.com/starkfoundry/sn-exec-go/process/versionedConstants"
)

var log = logger.GetOrCreate("common/forking")

type constantsByVersion struct {
	startVersion *goversion.Version
	fileName     string
}

// ArgsNewConstantsRegistry defines the constants registry arguments
type ArgsNewConstantsRegistry struct {
	VersionedConstantsConfig config.VersionedConstantsConfig
	ConfigDir                string
}

// constantsRegistry resolves the versioned constants snapshot matching a
// protocol version. Every configured document is loaded and validated at
// construction, so a malformed document is reported before any transaction
// is processed; resolved snapshots are immutable and cached.
type constantsRegistry struct {
	mutRegistry    sync.RWMutex
	entries        []constantsByVersion
	snapshots      map[string]*versionedConstants.VersionedConstants
	currentVersion string
	handlers       []process.VersionedConstantsSubscribeHandler
}

// NewConstantsRegistry creates a new constants registry from the versioned
// constants configuration
func NewConstantsRegistry(args ArgsNewConstantsRegistry) (*constantsRegistry, error) {
	if len(args.VersionedConstantsConfig.ConstantsByProtocol) == 0 {
		return nil, process.ErrInvalidVersionedConstantsConfig
	}

	registry := &constantsRegistry{
		entries:   make([]constantsByVersion, 0, len(args.VersionedConstantsConfig.ConstantsByProtocol)),
		snapshots: make(map[string]*versionedConstants.VersionedConstants),
		handlers:  make([]process.VersionedConstantsSubscribeHandler, 0),
	}

	for _, entry := range args.VersionedConstantsConfig.ConstantsByProtocol {
		startVersion, err := goversion.NewVersion(entry.StartVersion)
		if err != nil {
			return nil, fmt.Errorf("%w: start version '%s': %s",
				process.ErrInvalidVersionedConstantsConfig, entry.StartVersion, err.Error())
		}

		filePath := filepath.Join(args.ConfigDir, entry.FileName)
		snapshot, err := versionedConstants.NewVersionedConstantsFromFile(filePath)
		if err != nil {
			return nil, err
		}

		registry.entries = append(registry.entries, constantsByVersion{
			startVersion: startVersion,
			fileName:     entry.FileName,
		})
		registry.snapshots[entry.FileName] = snapshot
	}

	sort.Slice(registry.entries, func(i, j int) bool {
		return registry.entries[i].startVersion.LessThan(registry.entries[j].startVersion)
	})
	registry.currentVersion = registry.entries[0].startVersion.Original()

	log.Debug("constantsRegistry: loaded versioned constants documents",
		"num documents", len(registry.entries),
		"first version", registry.entries[0].startVersion.String(),
	)

	return registry, nil
}

func (registry *constantsRegistry) getMatchingEntry(protocolVersion *goversion.Version) constantsByVersion {
	matching := registry.entries[0]
	for _, entry := range registry.entries {
		if entry.startVersion.GreaterThan(protocolVersion) {
			break
		}

		matching = entry
	}

	return matching
}

// ConstantsForVersion returns the immutable snapshot covering the given
// protocol version
func (registry *constantsRegistry) ConstantsForVersion(protocolVersion string) (*versionedConstants.VersionedConstants, error) {
	if len(protocolVersion) == 0 {
		return nil, common.ErrNilProtocolVersion
	}

	parsedVersion, err := goversion.NewVersion(protocolVersion)
	if err != nil {
		return nil, fmt.Errorf("%w: protocol version '%s': %s",
			process.ErrInvalidVersionedConstantsConfig, protocolVersion, err.Error())
	}

	registry.mutRegistry.RLock()
	defer registry.mutRegistry.RUnlock()

	entry := registry.getMatchingEntry(parsedVersion)

	return registry.snapshots[entry.fileName], nil
}

// CurrentConstants returns the snapshot of the version last confirmed
func (registry *constantsRegistry) CurrentConstants() *versionedConstants.VersionedConstants {
	registry.mutRegistry.RLock()
	defer registry.mutRegistry.RUnlock()

	parsedVersion, err := goversion.NewVersion(registry.currentVersion)
	if err != nil {
		return nil
	}
	entry := registry.getMatchingEntry(parsedVersion)

	return registry.snapshots[entry.fileName]
}

// RegisterNotifyHandler registers the provided handler to be called whenever
// the confirmed protocol version switches to a different constants document
func (registry *constantsRegistry) RegisterNotifyHandler(handler process.VersionedConstantsSubscribeHandler) error {
	if check.IfNil(handler) {
		return common.ErrNilSubscribeHandler
	}

	registry.mutRegistry.Lock()
	registry.handlers = append(registry.handlers, handler)
	handler.VersionedConstantsChange(registry.currentVersion)
	registry.mutRegistry.Unlock()

	return nil
}

// VersionConfirmed is called whenever a new protocol version becomes active
func (registry *constantsRegistry) VersionConfirmed(protocolVersion string) error {
	parsedVersion, err := goversion.NewVersion(protocolVersion)
	if err != nil {
		return fmt.Errorf("%w: protocol version '%s': %s",
			process.ErrInvalidVersionedConstantsConfig, protocolVersion, err.Error())
	}

	registry.mutRegistry.Lock()
	defer registry.mutRegistry.Unlock()

	oldVersion, err := goversion.NewVersion(registry.currentVersion)
	if err != nil {
		return err
	}

	oldEntry := registry.getMatchingEntry(oldVersion)
	newEntry := registry.getMatchingEntry(parsedVersion)
	registry.currentVersion = protocolVersion
	if oldEntry.fileName == newEntry.fileName {
		// still covered by the same document
		return nil
	}

	log.Debug("constantsRegistry.VersionConfirmed new constants document",
		"protocol version", protocolVersion,
		"document", newEntry.fileName,
		"num handlers", len(registry.handlers),
	)

	for _, handler := range registry.handlers {
		if !check.IfNil(handler) {
			handler.VersionedConstantsChange(protocolVersion)
		}
	}

	return nil
}

// IsInterfaceNil returns true if there is no value under the interface
func (registry *constantsRegistry) IsInterfaceNil() bool {
	return registry == nil
}
