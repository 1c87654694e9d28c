package versionedConstants

import (
	"encoding/json"
	"fmt"
	"strconv"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/starkfoundry/sn-exec-go/process"
)

const validateRoundingConstsKey = "validate_rounding_consts"

// ValidateRoundingConsts holds the flooring factors applied to block number
// and timestamp while running in validate mode
type ValidateRoundingConsts struct {
	ValidateBlockNumberRounding uint64 `mapstructure:"validate_block_number_rounding"`
	ValidateTimestampRounding   uint64 `mapstructure:"validate_timestamp_rounding"`
}

// osConstants is the fully resolved gas cost table of one protocol version.
// Immutable after creation.
type osConstants struct {
	gasCosts               map[string]uint64
	validateRoundingConsts ValidateRoundingConsts
}

// newOsConstants resolves the os_constants section of a raw document into a
// complete gas cost table. Entries may be literals or linear combinations of
// other entries; only allow-listed names are materialized. A missing
// allow-listed name, a reference to an undefined name, a dependency cycle or
// an out-of-range value is a load error.
func newOsConstants(rawSection map[string]interface{}, skipValidation bool) (*osConstants, error) {
	resolver := &gasCostsResolver{
		rawSection: rawSection,
		resolved:   make(map[string]uint64),
		inProgress: make(map[string]struct{}),
	}

	for _, name := range process.AllowedGasCostNames {
		_, isDefined := rawSection[name]
		if !isDefined {
			continue
		}

		err := resolver.resolve(name)
		if err != nil {
			return nil, err
		}
	}

	roundingConsts := ValidateRoundingConsts{
		ValidateBlockNumberRounding: 1,
		ValidateTimestampRounding:   1,
	}
	rawRoundingConsts, hasRoundingConsts := rawSection[validateRoundingConstsKey]
	if hasRoundingConsts {
		err := decodeSection(rawRoundingConsts, &roundingConsts)
		if err != nil {
			return nil, fmt.Errorf("%w: %s section: %s", process.ErrMalformedConstantsDocument, validateRoundingConstsKey, err.Error())
		}
	}

	constants := &osConstants{
		gasCosts:               resolver.resolved,
		validateRoundingConsts: roundingConsts,
	}

	if !skipValidation {
		err := constants.validate()
		if err != nil {
			return nil, err
		}
	}

	return constants, nil
}

// validate checks that every allow-listed gas cost name has been resolved
func (oc *osConstants) validate() error {
	for _, name := range process.AllowedGasCostNames {
		_, isResolved := oc.gasCosts[name]
		if !isResolved {
			return fmt.Errorf("%w: %s", process.ErrMissingGasCostKey, name)
		}
	}

	return nil
}

// gasCostsResolver materializes gas cost constants through a depth-first
// traversal of the dependency graph, memoizing resolved values and reporting
// cycles instead of recursing forever
type gasCostsResolver struct {
	rawSection map[string]interface{}
	resolved   map[string]uint64
	inProgress map[string]struct{}
}

func (resolver *gasCostsResolver) resolve(name string) error {
	_, alreadyResolved := resolver.resolved[name]
	if alreadyResolved {
		return nil
	}
	_, isInProgress := resolver.inProgress[name]
	if isInProgress {
		return fmt.Errorf("%w: %s", process.ErrCyclicGasCostDependency, name)
	}

	rawValue, isDefined := resolver.rawSection[name]
	if !isDefined {
		return fmt.Errorf("%w: %s", process.ErrUnknownGasCostDependency, name)
	}

	switch value := rawValue.(type) {
	case json.Number:
		literal, err := parseUint64(value)
		if err != nil {
			return fmt.Errorf("%w: value of key '%s'", process.ErrGasCostValueOutOfRange, name)
		}
		resolver.resolved[name] = literal
	case map[string]interface{}:
		resolver.inProgress[name] = struct{}{}
		resolvedValue, err := resolver.resolveFormula(name, value)
		if err != nil {
			return err
		}
		delete(resolver.inProgress, name)
		resolver.resolved[name] = resolvedValue
	default:
		return fmt.Errorf("%w: unhandled value type for key '%s'", process.ErrMalformedConstantsDocument, name)
	}

	return nil
}

// resolveFormula computes sum(factor * value(dependency)) over the formula's
// entries, resolving each dependency first
func (resolver *gasCostsResolver) resolveFormula(name string, formula map[string]interface{}) (uint64, error) {
	dependencyNames := maps.Keys(formula)
	slices.Sort(dependencyNames)

	value := uint64(0)
	for _, dependencyName := range dependencyNames {
		err := resolver.resolve(dependencyName)
		if err != nil {
			return 0, err
		}

		rawFactor, isNumber := formula[dependencyName].(json.Number)
		if !isNumber {
			return 0, fmt.Errorf("%w: factor of dependency '%s' in key '%s'",
				process.ErrMalformedConstantsDocument, dependencyName, name)
		}
		factor, err := parseUint64(rawFactor)
		if err != nil {
			return 0, fmt.Errorf("%w: factor of dependency '%s' in key '%s'",
				process.ErrGasCostValueOutOfRange, dependencyName, name)
		}

		value += resolver.resolved[dependencyName] * factor
	}

	return value, nil
}

func parseUint64(number json.Number) (uint64, error) {
	return strconv.ParseUint(number.String(), 10, 64)
}
