package runtime

// Class is a class declaration's runtime object: a single optional
// superclass link, an explicit constructor (nil means the
// implicit default constructor, which simply forwards to `super(...)`
// when a superclass exists), and separate instance/static method tables.
//
// Method resolution for `super.m()` is explicit-handle based rather than
// walking the runtime prototype of the receiver: a method's Home class is
// fixed at class-body evaluation time, so `super` inside it always means
// "the method one link above Home", never "one link above whatever class
// the receiver happens to be an instance of".
type Class struct {
	Name          string
	Super         *Class
	Constructor   *Function
	Methods       map[string]*Function
	StaticMethods map[string]*Function

	refcount  int
	destroyed bool
}

func (*Class) TypeName() string { return "function" }
func (*Class) value()           {}

// NewClass creates an empty class ready to have methods installed.
func NewClass(name string, super *Class) *Class {
	return &Class{
		Name:          name,
		Super:         super,
		Methods:       make(map[string]*Function),
		StaticMethods: make(map[string]*Function),
	}
}

// InstallConstructor and InstallMethod set a method function and retain it
// on the class's behalf, mirroring Environment.Define's retain-on-store
// discipline: a class owns every Function it installs exactly once, and
// releases that ownership when the class itself is released.
func (c *Class) InstallConstructor(fn *Function) {
	c.Constructor = fn
	fn.retain()
}

func (c *Class) InstallMethod(name string, fn *Function) {
	c.Methods[name] = fn
	fn.retain()
}

func (c *Class) InstallStatic(name string, fn *Function) {
	c.StaticMethods[name] = fn
	fn.retain()
}

// retain registers one more owning reference to c, e.g. when c is stored
// in an environment slot (Environment.Define/Assign) — the same
// bookkeeping a *Function gets.
func (c *Class) retain() {
	if c != nil {
		c.refcount++
	}
}

// release drops one owning reference. On transition to zero it releases
// every method Function the class installed (each retained exactly once
// at install time), which is the class's half of the retain-on-store/
// release-on-teardown discipline applied to everything a released
// environment was holding.
func (c *Class) release() {
	if c == nil {
		return
	}
	c.refcount--
	if c.refcount > 0 || c.destroyed {
		return
	}
	c.destroyed = true
	c.Constructor.release()
	for _, m := range c.Methods {
		m.release()
	}
	for _, m := range c.StaticMethods {
		m.release()
	}
}

// LookupMethod searches c and its superclasses for an instance method,
// returning both the method and the class it was found on (the method's
// Home), so a caller can resolve a further `super` reference from there.
func (c *Class) LookupMethod(name string) (*Function, *Class) {
	for cur := c; cur != nil; cur = cur.Super {
		if m, ok := cur.Methods[name]; ok {
			return m, cur
		}
	}
	return nil, nil
}

// LookupStatic searches c and its superclasses for a static method.
func (c *Class) LookupStatic(name string) (*Function, bool) {
	for cur := c; cur != nil; cur = cur.Super {
		if m, ok := cur.StaticMethods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// IsSubclassOf reports whether c is target or descends from it, the
// semantics `instanceof` needs for a Class value used as the right-hand
// operand.
func (c *Class) IsSubclassOf(target *Class) bool {
	for cur := c; cur != nil; cur = cur.Super {
		if cur == target {
			return true
		}
	}
	return false
}
