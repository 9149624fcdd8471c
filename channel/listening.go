package channel

import "fmt"

// AttributeListening is the default channel for clusters without a specialised
// implementation. It caches whatever the device reports and reads nothing itself.
type AttributeListening struct {
	*ClusterChannel
}

func NewAttributeListening(c Cluster, o Owner) Channel {
	name := c.Kind
	if name == "" {
		name = fmt.Sprintf("0x%04x", c.ID)
	}

	return &AttributeListening{ClusterChannel: NewClusterChannel(c, o, name)}
}
