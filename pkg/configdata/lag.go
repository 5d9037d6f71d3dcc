package configdata

// lagTable tracks the LAG bundles of one file.
type lagTable struct {
	order    []string
	members  map[string][]string
	memberOf map[string]string
}

func (c *ConfigData) lagTableFor(file string) *lagTable {
	t, ok := c.lags[file]
	if !ok {
		t = &lagTable{members: make(map[string][]string), memberOf: make(map[string]string)}
		c.lags[file] = t
	}
	return t
}

// AddLag declares a LAG bundle in file without members.
func (c *ConfigData) AddLag(file, lag string) {
	t := c.lagTableFor(file)
	if _, ok := t.members[lag]; !ok {
		t.members[lag] = nil
		t.order = append(t.order, lag)
	}
}

// AddLagMember records member as part of the bundle lag in file.
func (c *ConfigData) AddLagMember(file, lag, member string) {
	c.AddLag(file, lag)
	t := c.lags[file]
	if prev, ok := t.memberOf[member]; ok {
		if prev != lag {
			c.Log(file).Warnf("Interface %s moved from %s to %s", member, prev, lag)
		} else {
			return
		}
	}
	t.members[lag] = append(t.members[lag], member)
	t.memberOf[member] = lag
	c.Log(file).Debugf("Interface %s added to %s", member, lag)
}

// IsLag reports whether name is a LAG bundle declared in file.
func (c *ConfigData) IsLag(file, name string) bool {
	t, ok := c.lags[file]
	if !ok {
		return false
	}
	_, ok = t.members[name]
	return ok
}

// IsLagMember reports whether name is bundled into a LAG in file.
func (c *ConfigData) IsLagMember(file, name string) bool {
	t, ok := c.lags[file]
	if !ok {
		return false
	}
	_, ok = t.memberOf[name]
	return ok
}

// LagMembers returns the members of lag in file in the order they were seen.
func (c *ConfigData) LagMembers(file, lag string) []string {
	if t, ok := c.lags[file]; ok {
		return t.members[lag]
	}
	return nil
}

// Lags returns the LAG bundles of file in declaration order.
func (c *ConfigData) Lags(file string) []string {
	if t, ok := c.lags[file]; ok {
		return t.order
	}
	return nil
}

// lagIndex is the declaration position of lag in file.
func (c *ConfigData) lagIndex(file, lag string) int {
	for i, l := range c.Lags(file) {
		if l == lag {
			return i
		}
	}
	return 0
}
