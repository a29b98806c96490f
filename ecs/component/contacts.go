package component

// EnemyContact is one player/enemy collision seen in the last physics step.
type EnemyContact struct {
	Enemy      uint64
	PlayerDown bool
	EnemyUp    bool
}

// EnemyContacts collects the player's enemy collisions. The physics system
// fills it and the lifecycle system drains it.
type EnemyContacts struct {
	Contacts []EnemyContact
}

// Record merges a contact into the list, one entry per enemy.
func (c *EnemyContacts) Record(enemy uint64, playerDown, enemyUp bool) {
	for i := range c.Contacts {
		if c.Contacts[i].Enemy == enemy {
			c.Contacts[i].PlayerDown = c.Contacts[i].PlayerDown || playerDown
			c.Contacts[i].EnemyUp = c.Contacts[i].EnemyUp || enemyUp
			return
		}
	}
	c.Contacts = append(c.Contacts, EnemyContact{Enemy: enemy, PlayerDown: playerDown, EnemyUp: enemyUp})
}

func (c *EnemyContacts) Drain() []EnemyContact {
	out := c.Contacts
	c.Contacts = nil
	return out
}

var EnemyContactsComponent = NewComponent[EnemyContacts]()
