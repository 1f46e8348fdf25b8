package sensitive

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register tags with sentinel
	sentinel.Tag(TagSeal)
	sentinel.Tag(TagMask)
}

// Processor seals tagged struct fields on the way to storage and opens them
// on the way back:
//
//	type Customer struct {
//	    ID    string  `json:"id"`
//	    Name  string  `json:"name" sensitive:"encrypt" mask:"name"`
//	    Email string  `json:"email" sensitive:"lower" mask:"email"`
//	    Phone *string `json:"phone,omitempty" sensitive:"encrypt" mask:"phone"`
//	}
//
// Tagged fields may be string, *string, []string or map[K]string, at any
// depth of nested structs and struct pointers. Sealing follows Scalar: empty
// values and existing envelopes are left alone.
//
// Processors are safe for concurrent use. SetSealer and SetMasker may be
// called at any time.
type Processor[T Cloner[T]] struct {
	codec Codec

	// Mutable configuration protected by mu
	mu      sync.RWMutex
	sealer  *Sealer
	maskers map[MaskType]Masker

	// Field plans (immutable after construction)
	sealFields []processorFieldPlan
	maskFields []processorFieldPlan

	// Type metadata
	typeName string
}

// processorFieldPlan describes how to reach and transform a single field.
type processorFieldPlan struct {
	index      []int  // reflect.Value.FieldByIndex access path
	name       string // field name for error messages
	tagVal     string // seal action or mask type
	ptrIndices []int  // indices where pointer dereference is needed
	isPtr      bool   // true if field is *string
	isSlice    bool   // true if field is []string
	isMap      bool   // true if field is map[K]string
}

// typeFieldPlans holds every plan for one struct type.
type typeFieldPlans struct {
	typeName   string
	sealFields []processorFieldPlan
	maskFields []processorFieldPlan
}

// NewProcessor creates a Processor for type T backed by sealer.
// Invalid tag values are reported as *ConfigError wrapping ErrInvalidTag.
func NewProcessor[T Cloner[T]](codec Codec, sealer *Sealer) (*Processor[T], error) {
	plans, err := buildFieldPlans[T]()
	if err != nil {
		return nil, err
	}

	p := &Processor[T]{
		codec:      codec,
		sealer:     sealer,
		maskers:    builtinMaskers(),
		typeName:   plans.typeName,
		sealFields: plans.sealFields,
		maskFields: plans.maskFields,
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), plans.typeName)
	return p, nil
}

// SetSealer replaces the Sealer. Returns the processor for chaining.
func (p *Processor[T]) SetSealer(s *Sealer) *Processor[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sealer = s
	return p
}

// SetMasker registers a masker for the given type.
// Returns the processor for chaining. Safe for concurrent use.
func (p *Processor[T]) SetMasker(mt MaskType, m Masker) *Processor[T] {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.maskers[mt] = m
	return p
}

// SealedFields returns the dotted names of the fields Store seals.
func (p *Processor[T]) SealedFields() []string {
	names := make([]string, len(p.sealFields))
	for i, plan := range p.sealFields {
		names[i] = plan.name
	}
	return names
}

// buildFieldPlans creates field plans for type T by scanning struct tags.
func buildFieldPlans[T any]() (*typeFieldPlans, error) {
	meta := sentinel.Scan[T]()
	plans := &typeFieldPlans{
		typeName: meta.TypeName,
	}

	if err := buildFieldPlansRecursive(plans, meta, nil, nil, ""); err != nil {
		return nil, err
	}

	return plans, nil
}

// buildFieldPlansRecursive recursively processes fields and nested structs.
func buildFieldPlansRecursive(plans *typeFieldPlans, meta sentinel.Metadata, parentIndex, ptrIndices []int, namePrefix string) error {
	for _, field := range meta.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		// Handle nested structs
		if field.Kind == sentinel.KindStruct {
			nestedSpec := scanNestedType(field.ReflectType)
			if nestedSpec != nil {
				if err := buildFieldPlansRecursive(plans, *nestedSpec, fullIndex, ptrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		// Handle pointer to struct
		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct {
			nestedSpec := scanNestedType(field.ReflectType.Elem())
			if nestedSpec != nil {
				newPtrIndices := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
				if err := buildFieldPlansRecursive(plans, *nestedSpec, fullIndex, newPtrIndices, fullName); err != nil {
					return err
				}
			}
			continue
		}

		sealVal, hasSeal := field.Tags[TagSeal]
		maskVal, hasMask := field.Tags[TagMask]
		if !hasSeal && !hasMask {
			continue
		}

		rt := field.ReflectType
		isString := rt.Kind() == reflect.String
		isPtr := rt.Kind() == reflect.Ptr && rt.Elem().Kind() == reflect.String
		isSlice := rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.String
		isMap := rt.Kind() == reflect.Map && rt.Elem().Kind() == reflect.String

		if !isString && !isPtr && !isSlice && !isMap {
			return &ConfigError{
				Err:   fmt.Errorf("%w: field type %s cannot be tagged", ErrInvalidTag, rt),
				Field: fullName,
			}
		}

		basePlan := processorFieldPlan{
			index:      fullIndex,
			name:       fullName,
			ptrIndices: ptrIndices,
			isPtr:      isPtr,
			isSlice:    isSlice,
			isMap:      isMap,
		}

		if hasSeal {
			if !IsValidSealAction(SealAction(sealVal)) {
				return &ConfigError{
					Err:   fmt.Errorf("%w: seal action %q", ErrInvalidTag, sealVal),
					Field: fullName,
				}
			}
			plan := basePlan
			plan.tagVal = sealVal
			plans.sealFields = append(plans.sealFields, plan)
		}

		if hasMask {
			if !IsValidMaskType(MaskType(maskVal)) {
				return &ConfigError{
					Err:   fmt.Errorf("%w: mask type %q", ErrInvalidTag, maskVal),
					Field: fullName,
				}
			}
			plan := basePlan
			plan.tagVal = maskVal
			plans.maskFields = append(plans.maskFields, plan)
		}
	}

	return nil
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.String()); ok {
		return &meta
	}

	if rt.Kind() != reflect.Struct {
		return nil
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        parseTags(sf.Tag),
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		meta.Fields = append(meta.Fields, fm)
	}

	return &meta
}

// parseTags extracts the processor's tags from a struct tag.
func parseTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, name := range []string{TagSeal, TagMask} {
		if val, ok := tag.Lookup(name); ok {
			tags[name] = val
		}
	}
	return tags
}

// Seal returns a copy of obj with every tagged field sealed.
func (p *Processor[T]) Seal(obj *T) (*T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clone := (*obj).Clone()
	if err := p.applySeal(&clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

// Open returns a copy of obj with every tagged envelope opened.
func (p *Processor[T]) Open(obj *T) (*T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	clone := (*obj).Clone()
	if err := p.applyOpen(&clone); err != nil {
		return nil, err
	}
	return &clone, nil
}

// Store seals tagged fields and marshals the result.
// Use for data going to storage (database, cache).
func (p *Processor[T]) Store(ctx context.Context, obj *T) ([]byte, error) {
	start := time.Now()

	var retErr error
	var retData []byte
	defer func() {
		emitProcessor(ctx, SignalProcessorStore, p.codec.ContentType(), p.typeName,
			len(retData), time.Since(start), len(p.sealFields), retErr)
	}()

	if obj == nil {
		retData, retErr = p.marshal(nil)
		return retData, retErr
	}

	sealed, err := p.Seal(obj)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	retData, retErr = p.marshal(sealed)
	return retData, retErr
}

// Load unmarshals data and opens tagged fields.
// Use for data coming from storage (database, cache).
func (p *Processor[T]) Load(ctx context.Context, data []byte) (*T, error) {
	start := time.Now()

	var retErr error
	defer func() {
		emitProcessor(ctx, SignalProcessorLoad, p.codec.ContentType(), p.typeName,
			len(data), time.Since(start), len(p.sealFields), retErr)
	}()

	var obj T
	if err := p.codec.Unmarshal(data, &obj); err != nil {
		retErr = newCodecError(ErrUnmarshal, err)
		return nil, retErr
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if err := p.applyOpen(&obj); err != nil {
		retErr = err
		return nil, retErr
	}

	return &obj, nil
}

// Display masks fields tagged with `mask` and marshals the result.
// Use for data going to logs and external consumers. obj should hold
// opened values; envelopes are masked like any other text.
func (p *Processor[T]) Display(_ context.Context, obj *T) ([]byte, error) {
	if obj == nil {
		return p.marshal(nil)
	}

	p.mu.RLock()
	clone := (*obj).Clone()
	err := p.apply(&clone, p.maskFields, func(plan processorFieldPlan, value string) (string, error) {
		return p.maskers[MaskType(plan.tagVal)].Mask(value), nil
	})
	p.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	return p.marshal(&clone)
}

func (p *Processor[T]) marshal(v any) ([]byte, error) {
	data, err := p.codec.Marshal(v)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// applySeal seals planned fields in place. Callers hold mu.
func (p *Processor[T]) applySeal(obj *T) error {
	if p.sealer == nil {
		return ErrUninitialized
	}
	if _, err := p.sealer.KeyStore(); err != nil {
		return err
	}

	plain := NewScalar(p.sealer)
	lower := NewScalar(p.sealer, WithLowerCase())

	return p.apply(obj, p.sealFields, func(plan processorFieldPlan, value string) (string, error) {
		if SealAction(plan.tagVal) == SealLower {
			return lower.Dump(value)
		}
		return plain.Dump(value)
	})
}

// applyOpen opens planned fields in place. Callers hold mu.
func (p *Processor[T]) applyOpen(obj *T) error {
	if p.sealer == nil {
		return ErrUninitialized
	}
	if _, err := p.sealer.KeyStore(); err != nil {
		return err
	}

	scalar := NewScalar(p.sealer)

	return p.apply(obj, p.sealFields, func(_ processorFieldPlan, value string) (string, error) {
		return scalar.Load(value)
	})
}

// apply runs fn over every planned field. Slices, maps and pointers are
// replaced rather than written through, so a shallow Clone never leaks
// changes back to the caller's value.
func (p *Processor[T]) apply(obj *T, plans []processorFieldPlan, fn func(processorFieldPlan, string) (string, error)) error {
	rv := reflect.ValueOf(obj).Elem()

	for _, plan := range plans {
		field, ok := getField(rv, plan)
		if !ok || !field.CanSet() {
			continue
		}

		switch {
		case plan.isSlice:
			if field.IsNil() {
				continue
			}
			out := reflect.MakeSlice(field.Type(), field.Len(), field.Len())
			for i := 0; i < field.Len(); i++ {
				result, err := fn(plan, field.Index(i).String())
				if err != nil {
					return fmt.Errorf("field %s[%d]: %w", plan.name, i, err)
				}
				out.Index(i).SetString(result)
			}
			field.Set(out)

		case plan.isMap:
			if field.IsNil() {
				continue
			}
			out := reflect.MakeMapWithSize(field.Type(), field.Len())
			elemType := field.Type().Elem()
			iter := field.MapRange()
			for iter.Next() {
				k, v := iter.Key(), iter.Value()
				result, err := fn(plan, v.String())
				if err != nil {
					return fmt.Errorf("field %s[%v]: %w", plan.name, k.Interface(), err)
				}
				out.SetMapIndex(k, reflect.ValueOf(result).Convert(elemType))
			}
			field.Set(out)

		case plan.isPtr:
			if field.IsNil() {
				continue
			}
			result, err := fn(plan, field.Elem().String())
			if err != nil {
				return fmt.Errorf("field %s: %w", plan.name, err)
			}
			ptr := reflect.New(field.Type().Elem())
			ptr.Elem().SetString(result)
			field.Set(ptr)

		default:
			result, err := fn(plan, field.String())
			if err != nil {
				return fmt.Errorf("field %s: %w", plan.name, err)
			}
			field.SetString(result)
		}
	}

	return nil
}

// getField navigates a field path, dereferencing pointers as needed.
func getField(rv reflect.Value, plan processorFieldPlan) (reflect.Value, bool) {
	if len(plan.ptrIndices) == 0 {
		return rv.FieldByIndex(plan.index), true
	}

	current := rv
	ptrSet := make(map[int]bool, len(plan.ptrIndices))
	for _, idx := range plan.ptrIndices {
		ptrSet[idx] = true
	}

	for i, idx := range plan.index {
		current = current.Field(idx)

		if ptrSet[i] {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}

	return current, true
}
